package media

import "sync"

// PromptCache stores recovered prompts keyed by file id. A nil entry is a
// valid cached value meaning "searched, not found"; it prevents repeat chat
// scans for the same file. The cache is process-scoped and never evicted.
type PromptCache struct {
	mu      sync.RWMutex
	entries map[string]*string
}

func NewPromptCache() *PromptCache {
	return &PromptCache{entries: make(map[string]*string)}
}

// Get returns the cached prompt and whether an entry exists. ok=true with a
// nil prompt is a negative cache hit.
func (p *PromptCache) Get(fileID string) (prompt *string, ok bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	prompt, ok = p.entries[fileID]
	return prompt, ok
}

// Put records a result, nil included. Last write wins.
func (p *PromptCache) Put(fileID string, prompt *string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.entries[fileID] = prompt
}

// Delete drops an entry, typically after the file itself is deleted.
func (p *PromptCache) Delete(fileID string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.entries, fileID)
}

// Len reports the number of cached entries.
func (p *PromptCache) Len() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.entries)
}
