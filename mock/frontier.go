package mock

import (
	"github.com/fwojciec/sitecrawl"
)

var _ sitecrawl.Frontier = (*Frontier)(nil)

// Frontier is a mock implementation of sitecrawl.Frontier.
type Frontier struct {
	AddFn         func(url string) bool
	AddBoundaryFn func()
	PopFn         func() (sitecrawl.Item, bool)
	RequeueFn     func(item sitecrawl.Item)
	SeenFn        func(url string) bool
	LenFn         func() int
}

func (f *Frontier) Add(url string) bool {
	return f.AddFn(url)
}

func (f *Frontier) AddBoundary() {
	f.AddBoundaryFn()
}

func (f *Frontier) Pop() (sitecrawl.Item, bool) {
	return f.PopFn()
}

func (f *Frontier) Requeue(item sitecrawl.Item) {
	f.RequeueFn(item)
}

func (f *Frontier) Seen(url string) bool {
	return f.SeenFn(url)
}

func (f *Frontier) Len() int {
	return f.LenFn()
}
