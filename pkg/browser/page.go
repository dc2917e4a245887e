package browser

import (
	"sync"

	"github.com/playwright-community/playwright-go"

	"github.com/vertti/bananacheck/pkg/uicheck"
)

// Page adapts a playwright.Page to uicheck.Page. A single playwright
// response listener fans out to the handlers registered through
// OnResponse.
type Page struct {
	page playwright.Page

	mu       sync.Mutex
	handlers map[int]func(uicheck.Response)
	nextID   int
}

func newPage(p playwright.Page) *Page {
	pg := &Page{page: p, handlers: make(map[int]func(uicheck.Response))}
	p.OnResponse(pg.dispatch)
	return pg
}

// dispatch runs on the playwright event goroutine.
func (p *Page) dispatch(r playwright.Response) {
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

func (p *Page) OnResponse(handler func(uicheck.Response)) func() {
	p.mu.Lock()
	defer p.mu.Unlock()
	id := p.nextID
	p.nextID++
	p.handlers[id] = handler
	return func() {
		p.mu.Lock()
		defer p.mu.Unlock()
		delete(p.handlers, id)
	}
}

func (p *Page) Goto(url string) error {
	_, err := p.page.Goto(url)
	return err
}

func (p *Page) WaitForNetworkIdle() error {
	return p.page.WaitForLoadState(playwright.PageWaitForLoadStateOptions{
		State: playwright.LoadStateNetworkidle,
	})
}

func (p *Page) Title() (string, error) {
	return p.page.Title()
}

func (p *Page) QuerySelector(selector string) (uicheck.Element, error) {
	el, err := p.page.QuerySelector(selector)
	if err != nil || el == nil {
		return nil, err
	}
	return element{el}, nil
}

func (p *Page) QuerySelectorAll(selector string) ([]uicheck.Element, error) {
	els, err := p.page.QuerySelectorAll(selector)
	if err != nil {
		return nil, err
	}
	out := make([]uicheck.Element, len(els))
	for i, el := range els {
		out[i] = element{el}
	}
	return out, nil
}

type element struct {
	handle playwright.ElementHandle
}

func (e element) Fill(value string) error { return e.handle.Fill(value) }
func (e element) Click() error            { return e.handle.Click() }
