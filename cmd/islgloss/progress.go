package main

import (
	"sync"

	"github.com/gosuri/uiprogress"
)

// pullProgress renders image pull progress as a percentage bar
type pullProgress struct {
	once   sync.Once
	bar    *uiprogress.Bar
	status string
	mu     sync.Mutex
}

func newPullProgress() *pullProgress {
	return &pullProgress{}
}

// Update matches the download progress callback of the manager
func (p *pullProgress) Update(current, total int64, status string) {
	p.once.Do(func() {
		uiprogress.Start()
		p.bar = uiprogress.AddBar(100)
		p.bar.AppendCompleted()
		p.bar.PrependElapsed()
		p.bar.AppendFunc(func(b *uiprogress.Bar) string {
			p.mu.Lock()
			defer p.mu.Unlock()
			return p.status
		})
	})

	p.mu.Lock()
	p.status = status
	p.mu.Unlock()

	if total > 0 {
		_ = p.bar.Set(int(percent(current, total)))
	}
}

// Stop stops rendering if the bar was ever started
func (p *pullProgress) Stop() {
	if p.bar != nil {
		uiprogress.Stop()
	}
}

func percent(current, total int64) int64 {
	if total <= 0 {
		return 0
	}
	pc := current * 100 / total
	if pc > 100 {
		return 100
	}
	if pc < 0 {
		return 0
	}
	return pc
}
