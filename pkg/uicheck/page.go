package uicheck

// Page is the subset of a browser page the UI checks drive.
type Page interface {
	Goto(url string) error
	WaitForNetworkIdle() error
	Title() (string, error)
	// QuerySelector returns nil and no error when nothing matches.
	QuerySelector(selector string) (Element, error)
	QuerySelectorAll(selector string) ([]Element, error)
	// OnResponse registers handler for every response the page receives
	// and returns a function that unregisters it.
	OnResponse(handler func(Response)) (remove func())
}

// Element is a handle to a DOM element.
type Element interface {
	Fill(value string) error
	Click() error
}

// Response is a network response observed by a page.
type Response interface {
	URL() string
	Status() int
}
