package ports

// Progress is incremented once per finished task, from any worker goroutine.
type Progress interface {
	Start(total int)
	Increment()
	Finish()
}

type NopProgress struct{}

func (NopProgress) Start(int)  {}
func (NopProgress) Increment() {}
func (NopProgress) Finish()    {}
