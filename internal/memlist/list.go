// Package memlist serves a single anonymous todo list kept in process memory.
// Items are plain strings addressed by position; nothing survives a restart.
package memlist

import (
	"errors"
	"strings"
	"sync"
)

var (
	ErrEmptyItem     = errors.New("todo item is empty")
	ErrIndexOutRange = errors.New("index out of range")
)

// List is a goroutine-safe ordered list of todo strings.
type List struct {
	mu    sync.RWMutex
	items []string
}

func NewList() *List {
	return &List{items: make([]string, 0, 16)}
}

// Add appends item and returns its index.
func (l *List) Add(item string) (int, error) {
	item = strings.TrimSpace(item)
	if item == "" {
		return 0, ErrEmptyItem
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.items = append(l.items, item)
	return len(l.items) - 1, nil
}

// Remove deletes the item at index, shifting later items down, and returns it.
func (l *List) Remove(index int) (string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if index < 0 || index >= len(l.items) {
		return "", ErrIndexOutRange
	}
	item := l.items[index]
	l.items = append(l.items[:index], l.items[index+1:]...)
	return item, nil
}

// Items returns a copy of the list in insertion order.
func (l *List) Items() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]string, len(l.items))
	copy(out, l.items)
	return out
}
