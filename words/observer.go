// words/observer.go
package words

// Event describes one finished Format call.
type Event struct {
	Amount int64

	// Language is the matched language tag ("UA", "ENG") or, when nothing
	// matched, the string the caller passed.
	Language string

	// Currency is the resolved currency name; empty when resolution failed.
	Currency string

	UnknownLanguage bool
	Err             error
}

// Observer is notified after every Format call. Implementations must be safe
// for concurrent use.
type Observer interface {
	ObserveFormat(ev Event)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(ev Event)

// ObserveFormat calls f(ev).
func (f ObserverFunc) ObserveFormat(ev Event) {
	f(ev)
}
