package chromedp_scraper

import "sync"

// AgentPool hands out desktop user agents in rotation.
type AgentPool struct {
	mu         sync.Mutex
	userAgents []string
	index      int
}

func NewAgentPool() *AgentPool {
	return &AgentPool{
		userAgents: []string{
			"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
			"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
			"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
		},
	}
}

// Next returns the next user agent, rotating sequentially.
func (p *AgentPool) Next() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	ua := p.userAgents[p.index]
	p.index = (p.index + 1) % len(p.userAgents)
	return ua
}
