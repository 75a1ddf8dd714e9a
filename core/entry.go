package core

import (
	"sync"
	"time"
)

// Entry represents one log record on its way to a handler
type Entry struct {
	Time    time.Time
	Level   Level
	Name    string
	Message string
	Fields  []Field
}

// entryPool is a pool of Entry objects to reduce allocations
var entryPool = sync.Pool{
	New: func() interface{} {
		return &Entry{
			Fields: make([]Field, 0, 8), // Pre-allocate for 8 fields
		}
	},
}

// GetEntry retrieves an Entry from the pool with Time set to now
func GetEntry() *Entry {
	e := entryPool.Get().(*Entry)
	e.Time = time.Now()
	e.Fields = e.Fields[:0]
	return e
}

// PutEntry returns an Entry to the pool
func PutEntry(e *Entry) {
	if e == nil {
		return
	}
	// Clear references so pooled entries do not pin caller values
	for i := range e.Fields {
		e.Fields[i] = Field{}
	}
	e.Fields = e.Fields[:0]
	e.Message = ""
	e.Name = ""
	entryPool.Put(e)
}
