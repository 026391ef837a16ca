// Package dispatch routes decoded messages to subscribers by message name.
//
// A Dispatcher holds one logical signal per message name. Subscribers attach
// with Connect and detach with Disconnect; Send delivers a message to every
// subscriber of its name, then to subscribers of Any. Synchronous subscribers
// run on the sender's goroutine in subscription order. Asynchronous
// subscribers run on their own goroutine with a bounded queue, so a slow
// consumer never stalls the connection read loop.
//
// A panicking subscriber never takes down the dispatcher or starves its
// peers; the panic is reported through the panic handler and delivery
// continues.
package dispatch
