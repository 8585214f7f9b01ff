// Package page is an in-memory rendering of the page slot contract. A
// Document only answers for the slots it was built with, like a real page
// that includes some of the optional elements and not others.
package page

import (
	"sync"

	"github.com/nikolayk812/storefront-demo/internal/port"
)

type Document struct {
	mu       sync.Mutex
	elements map[string]*Element
	forms    map[string]*Form
}

func New() *Document {
	return &Document{
		elements: map[string]*Element{},
		forms:    map[string]*Form{},
	}
}

// WithElements adds empty, visible, enabled elements for the given IDs.
func (d *Document) WithElements(ids ...string) *Document {
	d.mu.Lock()
	defer d.mu.Unlock()

	for _, id := range ids {
		d.elements[id] = &Element{visible: true}
	}
	return d
}

// WithForm adds a form whose fields start with the given values.
func (d *Document) WithForm(id string, values map[string]string) *Document {
	d.mu.Lock()
	defer d.mu.Unlock()

	f := &Form{values: map[string]string{}}
	for k, v := range values {
		f.values[k] = v
	}
	d.forms[id] = f
	return d
}

func (d *Document) Element(id string) (port.Element, bool) {
	e, ok := d.Get(id)
	if !ok {
		return nil, false
	}
	return e, true
}

func (d *Document) Form(id string) (port.Form, bool) {
	f, ok := d.GetForm(id)
	if !ok {
		return nil, false
	}
	return f, true
}

// Get returns the concrete element for inspection.
func (d *Document) Get(id string) (*Element, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	e, ok := d.elements[id]
	return e, ok
}

func (d *Document) GetForm(id string) (*Form, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	f, ok := d.forms[id]
	return f, ok
}

type Element struct {
	mu       sync.Mutex
	text     string
	html     string
	disabled bool
	visible  bool
}

// SetText replaces the content with plain text.
func (e *Element) SetText(text string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.text = text
	e.html = ""
}

// SetHTML replaces the content with markup. Callers are responsible for
// escaping anything untrusted in it.
func (e *Element) SetHTML(html string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.html = html
	e.text = ""
}

func (e *Element) SetDisabled(disabled bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.disabled = disabled
}

func (e *Element) SetVisible(visible bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.visible = visible
}

func (e *Element) Text() string {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.text
}

func (e *Element) HTML() string {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.html
}

func (e *Element) Disabled() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.disabled
}

func (e *Element) Visible() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.visible
}

type Form struct {
	mu     sync.Mutex
	values map[string]string
	resets int
}

func (f *Form) Value(field string) string {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.values[field]
}

func (f *Form) Set(field, value string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.values[field] = value
}

// Reset clears every field, like an HTML form reset with empty defaults.
func (f *Form) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()

	clear(f.values)
	f.resets++
}

// Resets reports how many times the form was reset.
func (f *Form) Resets() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.resets
}
