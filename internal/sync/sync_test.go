package sync

import "testing"

func TestMutexTypes(t *testing.T) {
	var mu Mutex
	mu.Lock()
	mu.Unlock()

	var rw RWMutex
	rw.RLock()
	rw.RLock()
	rw.RUnlock()
	rw.RUnlock()
	rw.Lock()
	rw.Unlock()

	var wg WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		mu.Lock()
		defer mu.Unlock()
	}()
	wg.Wait()
}
