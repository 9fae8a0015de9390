package email

// SendWelcomeEmail greets a user created through addUser.
func (c *Client) SendWelcomeEmail(to, username, fullName string) error {
	data := map[string]string{
		"Username": username,
		"FullName": fullName,
	}

	return c.SendEmail(
		to,
		"Welcome to Print Gallery!",
		TemplateWelcome,
		data,
	)
}
