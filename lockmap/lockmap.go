// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package lockmap

import "sync"

type holderLock struct {
	holders int
	mu      sync.Mutex
}

// Lockmap hands out one mutex per key. A key's mutex only exists while it is
// held or awaited.
type Lockmap struct {
	l sync.Mutex
	m map[string]*holderLock
}

func New(initSize int) *Lockmap {
	return &Lockmap{
		m: make(map[string]*holderLock, initSize),
	}
}

func (l *Lockmap) Lock(key []byte) {
	l.l.Lock()
	hl, ok := l.m[string(key)]
	if !ok {
		hl = &holderLock{}
		l.m[string(key)] = hl
	}
	hl.holders++
	l.l.Unlock()

	hl.mu.Lock()
}

// Unlock must follow a Lock of the same key.
func (l *Lockmap) Unlock(key []byte) {
	l.l.Lock()
	hl := l.m[string(key)]
	hl.holders--
	if hl.holders == 0 {
		delete(l.m, string(key))
	}
	l.l.Unlock()

	hl.mu.Unlock()
}

// Locks returns the number of keys currently held or awaited.
func (l *Lockmap) Locks() int {
	l.l.Lock()
	defer l.l.Unlock()

	return len(l.m)
}
