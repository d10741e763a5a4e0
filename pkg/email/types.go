package email

// Message is a provider-independent outbound mail. Builders in templates.go
// produce these; Client.Send turns them into SMTP messages.
type Message struct {
	To       []string
	CC       []string
	BCC      []string
	Subject  string
	TextBody string
	HTMLBody string
	Headers  map[string]string
}
