package testutil

import (
	"strings"
	"sync"
	"time"

	"github.com/vertti/bananacheck/pkg/uicheck"
)

// FakeResponse is a canned page response.
type FakeResponse struct {
	RespURL    string
	RespStatus int
}

func (r FakeResponse) URL() string { return r.RespURL }
func (r FakeResponse) Status() int { return r.RespStatus }

// FakePage is an in-memory uicheck.Page. Matches maps a selector to the
// number of elements it finds; selector lists joined by ", " are summed.
type FakePage struct {
	TitleText string
	Matches   map[string]int

	GotoErr  error
	IdleErr  error
	TitleErr error
	FillErr  error
	ClickErr error

	// ClickResponses are delivered to response listeners on every click.
	ClickResponses []FakeResponse

	mu       sync.Mutex
	handlers map[int]func(uicheck.Response)
	nextID   int
	visits   []string
	filled   []string
	clicked  []string
}

func (p *FakePage) Goto(url string) error {
	p.mu.Lock()
	p.visits = append(p.visits, url)
	p.mu.Unlock()
	return p.GotoErr
}

func (p *FakePage) WaitForNetworkIdle() error { return p.IdleErr }

func (p *FakePage) Title() (string, error) { return p.TitleText, p.TitleErr }

func (p *FakePage) QuerySelector(selector string) (uicheck.Element, error) {
	if p.Matches[selector] > 0 {
		return &FakeElement{page: p, selector: selector}, nil
	}
	return nil, nil
}

func (p *FakePage) QuerySelectorAll(selector string) ([]uicheck.Element, error) {
	var els []uicheck.Element
	for _, sel := range strings.Split(selector, ", ") {
		for i := 0; i < p.Matches[sel]; i++ {
			els = append(els, &FakeElement{page: p, selector: sel})
		}
	}
	return els, nil
}

func (p *FakePage) OnResponse(handler func(uicheck.Response)) func() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.handlers == nil {
		p.handlers = make(map[int]func(uicheck.Response))
	}
	id := p.nextID
	p.nextID++
	p.handlers[id] = handler
	return func() {
		p.mu.Lock()
		defer p.mu.Unlock()
		delete(p.handlers, id)
	}
}

// Emit delivers r to every registered response listener.
func (p *FakePage) Emit(r uicheck.Response) {
	p.mu.Lock()
	handlers := make([]func(uicheck.Response), 0, len(p.handlers))
	for _, h := range p.handlers {
		handlers = append(handlers, h)
	}
	p.mu.Unlock()
	for _, h := range handlers {
		h(r)
	}
}

// Listeners returns the number of registered response listeners.
func (p *FakePage) Listeners() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.handlers)
}

// Visits returns the URLs navigated to.
func (p *FakePage) Visits() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.visits...)
}

// Filled returns the values filled into elements.
func (p *FakePage) Filled() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.filled...)
}

// Clicked returns the selectors of clicked elements.
func (p *FakePage) Clicked() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.clicked...)
}

// FakeElement is an element returned by FakePage.
type FakeElement struct {
	page     *FakePage
	selector string
}

func (e *FakeElement) Fill(value string) error {
	if e.page.FillErr != nil {
		return e.page.FillErr
	}
	e.page.mu.Lock()
	e.page.filled = append(e.page.filled, value)
	e.page.mu.Unlock()
	return nil
}

func (e *FakeElement) Click() error {
	if e.page.ClickErr != nil {
		return e.page.ClickErr
	}
	e.page.mu.Lock()
	e.page.clicked = append(e.page.clicked, e.selector)
	e.page.mu.Unlock()
	for _, r := range e.page.ClickResponses {
		e.page.Emit(r)
	}
	return nil
}

// FakeTicker is a manually driven uicheck.Ticker.
type FakeTicker struct {
	ch      chan time.Time
	mu      sync.Mutex
	stopped bool
}

// NewFakeTicker returns a ticker holding up to buffer undelivered ticks.
func NewFakeTicker(buffer int) *FakeTicker {
	return &FakeTicker{ch: make(chan time.Time, buffer)}
}

func (f *FakeTicker) C() <-chan time.Time { return f.ch }

func (f *FakeTicker) Stop() {
	f.mu.Lock()
	f.stopped = true
	f.mu.Unlock()
}

// Stopped reports whether Stop was called.
func (f *FakeTicker) Stopped() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.stopped
}

// Tick queues n ticks without blocking; ticks beyond the buffer are dropped.
func (f *FakeTicker) Tick(n int) {
	for i := 0; i < n; i++ {
		select {
		case f.ch <- time.Time{}:
		default:
			return
		}
	}
}

// ElapsedClock returns a ticker factory whose tickers already hold n ticks,
// simulating n intervals passing instantly.
func ElapsedClock(n int) func(time.Duration) uicheck.Ticker {
	return func(time.Duration) uicheck.Ticker {
		t := NewFakeTicker(n)
		t.Tick(n)
		return t
	}
}

// FakeBrowser is an in-memory browser session around a FakePage.
type FakeBrowser struct {
	FakePage *FakePage
	CloseErr error

	mu     sync.Mutex
	closed int
}

func (b *FakeBrowser) Page() uicheck.Page { return b.FakePage }

func (b *FakeBrowser) Close() error {
	b.mu.Lock()
	b.closed++
	b.mu.Unlock()
	return b.CloseErr
}

// Closed returns how many times Close was called.
func (b *FakeBrowser) Closed() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.closed
}
