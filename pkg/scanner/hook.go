package scanner

import (
	"context"
	"sort"
	"sync"

	log "github.com/sirupsen/logrus"
)

// HookContext is handed to post hooks after a scan batch finishes
type HookContext struct {
	Ctx       context.Context
	OutputDir string
	Summary   *Summary
}

// Hook runs after a scan batch completes, e.g. to aggregate the records
// into a report or to send a notification.
type Hook interface {
	Name() string
	Description() string
	PostHook(ctx HookContext) error
}

var (
	hookMu       sync.RWMutex
	hookRegistry = make(map[string]Hook)
)

func RegisterPostHook(name string, hook Hook) {
	hookMu.Lock()
	defer hookMu.Unlock()
	if _, exists := hookRegistry[name]; exists {
		log.Errorf("post hook %s already registered", name)
	}
	hookRegistry[name] = hook
}

func GetPostHook(name string) Hook {
	hookMu.RLock()
	defer hookMu.RUnlock()
	return hookRegistry[name]
}

type HookInfo struct {
	Name        string
	Description string
}

func ListAvailableHooks() []HookInfo {
	hookMu.RLock()
	defer hookMu.RUnlock()

	infos := make([]HookInfo, 0, len(hookRegistry))
	for name, hook := range hookRegistry {
		infos = append(infos, HookInfo{Name: name, Description: hook.Description()})
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Name < infos[j].Name })
	return infos
}
