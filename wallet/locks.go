package wallet

import "sync"

// addrLocks stores one *sync.Mutex per address, created on demand.
var addrLocks sync.Map // map[string]*sync.Mutex

// GetAddrLock returns the mutex serializing transfers from one address.
func GetAddrLock(addr string) *sync.Mutex {
	if v, ok := addrLocks.Load(addr); ok {
		return v.(*sync.Mutex)
	}
	mu := &sync.Mutex{}
	actual, _ := addrLocks.LoadOrStore(addr, mu)
	return actual.(*sync.Mutex)
}
