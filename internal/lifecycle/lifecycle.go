package lifecycle

type Lifecycle int

const (
	Singleton Lifecycle = iota
	Transient
)

func (l Lifecycle) String() string {
	switch l {
	case Singleton:
		return "singleton"
	case Transient:
		return "transient"
	default:
		return "unknown"
	}
}
