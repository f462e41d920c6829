// Package channel implements a bounded single-producer/single-consumer
// queue. It is split into three parts: the unexported queue (the shared
// state), and the exported Producer and Consumer wrappers, which are the
// only way to reach the queue. That split is what makes "one producer, one
// consumer" a structural guarantee rather than a convention: there is no
// way to obtain a second Producer or Consumer for the same queue.
package channel
