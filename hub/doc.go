// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package hub pushes live stats snapshots to connected observers.

# Sessions

Each observer is a Sink wrapped in a Session. Join queues the current
snapshot before the session becomes visible to Publish, so the first frame an
observer sees is never older than a later one:

	sess, err := h.Join(sink)
	defer sess.Close()
	<-sess.Done()

Every session owns a bounded queue and a writer goroutine. Frames reach a
given observer in the order they were published.

# Publishing

Publish records the snapshot and queues it for every session without
blocking. A session whose queue is full, or whose Send fails, is closed and
removed; the observer gets a fresh snapshot when it reconnects. Delivery
errors are logged and never reach the caller of Publish.
*/
package hub
