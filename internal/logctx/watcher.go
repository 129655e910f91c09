package logctx

import (
	"fmt"
	"io"
	"time"
)

const (
	dedupWindow      = 5 * time.Second
	minRepeats       = 10
	suppressCooldown = 1 * time.Minute
)

// Hold main thread exit until logger is finished its work
func (logger *Logger) Wait() {
	logger.wg.Wait()
}

// Wake signals/broadcasts to any goroutines waiting on the condition variable
func (logger *Logger) Wake() {
	logger.mutex.Lock()
	defer logger.mutex.Unlock()
	logger.cond.Broadcast()
}

// Starts a go routine that reads events and writes formatted output to io.Writer.
// Stops when logger.Done is closed and the buffer is empty.
func StartWatcher(logger *Logger, output io.Writer) {
	logger.wg.Add(1)

	go func() {
		defer logger.wg.Done()

		var dedup dedupState
		for {
			event, ok := logger.next()
			if !ok {
				return
			}

			if dedup.suppress(event, time.Now(), output) {
				continue
			}
			fmt.Fprint(output, event.Format())
		}
	}()
}

// Blocks until an event is available or the logger is done
func (logger *Logger) next() (event Event, ok bool) {
	logger.mutex.Lock()
	defer logger.mutex.Unlock()

	for len(logger.queue) == 0 {
		select {
		case <-logger.Done:
			return
		default:
			logger.cond.Wait()
		}
	}

	event = logger.queue[0]
	logger.queue = logger.queue[1:]
	ok = true
	return
}

// Reports whether event repeats the previous message inside the dedup window.
// Emits one suppression notice per cooldown once enough repeats accumulate.
func (dedup *dedupState) suppress(event Event, now time.Time, output io.Writer) (skip bool) {
	if event.Message == "" || event.Message != dedup.lastMsg || now.Sub(event.Timestamp) > dedupWindow {
		dedup.lastMsg = event.Message
		dedup.repeatCount = 1
		return
	}

	dedup.repeatCount++
	if dedup.repeatCount >= minRepeats && now.Sub(dedup.lastSuppressTime) >= suppressCooldown {
		fmt.Fprint(output, suppressionNotice(event, dedup.repeatCount))
		dedup.lastSuppressTime = now
		dedup.repeatCount = 0
	}
	skip = true
	return
}
