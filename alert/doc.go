// Package alert carries critical log records to an external channel.
//
// Build turns a critical record into an Alert whose title names the
// logger and message and whose detail is the record's fields as
// indented JSON. Webhook posts the alert to a Slack-compatible incoming
// webhook. Dispatcher sends in the background, one goroutine per alert
// bounded by a timeout, so the logging call returns as soon as the
// record itself is written. Delivery problems are handed to a callback
// and never reach the code that logged.
//
// Deliveries are attempted once; there is no retry. An optional
// per-minute limit drops alerts beyond the budget.
package alert
