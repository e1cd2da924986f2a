package ownerlock

import (
	"context"
	"sync"
)

// Local блокировка по владельцу в пределах одного процесса
// Для каждого ownerID хранится семафор на один слот, запись удаляется, когда ожидающих нет
type Local struct {
	mu    sync.Mutex
	locks map[int64]*entry
}

type entry struct {
	sem  chan struct{}
	refs int
}

// NewLocal создает локальную блокировку
func NewLocal() *Local {
	return &Local{locks: make(map[int64]*entry)}
}

// Lock захватывает блокировку владельца, ожидая не дольше, чем живет ctx
// Возвращает функцию освобождения
func (l *Local) Lock(ctx context.Context, ownerID int64) (func(), error) {
	l.mu.Lock()
	e, ok := l.locks[ownerID]
	if !ok {
		e = &entry{sem: make(chan struct{}, 1)}
		l.locks[ownerID] = e
	}
	e.refs++
	l.mu.Unlock()

	select {
	case e.sem <- struct{}{}:
	case <-ctx.Done():
		l.release(ownerID, e)
		return nil, ctx.Err()
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			<-e.sem
			l.release(ownerID, e)
		})
	}, nil
}

func (l *Local) release(ownerID int64, e *entry) {
	l.mu.Lock()
	defer l.mu.Unlock()

	e.refs--
	if e.refs == 0 {
		delete(l.locks, ownerID)
	}
}
