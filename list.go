package cachelru

// entry is an intrusive doubly-linked list node holding one key/value pair.
// The node pointer doubles as the entry's locator: it stays valid from
// pushFront until the entry is unlinked.
type entry[K comparable, V any] struct {
	key  K
	val  V
	prev *entry[K, V]
	next *entry[K, V]
}

// recencyList keeps entries ordered by recency of use: head is the most
// recently used entry, tail the least recently used. All operations are
// O(1). The zero value is an empty list.
type recencyList[K comparable, V any] struct {
	head *entry[K, V]
	tail *entry[K, V]
}

// pushFront links e in at the MRU end. e must not already be on the list.
func (l *recencyList[K, V]) pushFront(e *entry[K, V]) {
	e.prev = nil
	e.next = l.head
	if l.head != nil {
		l.head.prev = e
	}
	l.head = e
	if l.tail == nil {
		l.tail = e
	}
}

// moveToFront relocates e to the MRU end. No-op when e is already there.
func (l *recencyList[K, V]) moveToFront(e *entry[K, V]) {
	if l.head == e {
		return
	}
	l.remove(e)
	l.pushFront(e)
}

// popBack unlinks and returns the LRU entry, or nil when the list is empty.
func (l *recencyList[K, V]) popBack() *entry[K, V] {
	e := l.tail
	if e != nil {
		l.remove(e)
	}
	return e
}

// remove unlinks e. e must be on the list.
func (l *recencyList[K, V]) remove(e *entry[K, V]) {
	if e.prev != nil {
		e.prev.next = e.next
	} else {
		l.head = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	} else {
		l.tail = e.prev
	}
	e.prev = nil
	e.next = nil
}
