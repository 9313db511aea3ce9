// Package sms abstracts the SMS delivery gateway used to send one-time
// verification codes. The wizard core treats delivery as an external
// collaborator; implementations live here.
package sms

// Gateway sends a text message to a phone number in E.164-ish form.
type Gateway interface {
	Send(to, message string) error
}
