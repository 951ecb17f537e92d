package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/common-nighthawk/go-figure"

	"github.com/viant/portal/schema"
)

func (c *LoginCommand) Execute(_ []string) error {
	s := c.service
	p, _, err := s.portal()
	if err != nil {
		return err
	}
	defer p.Close()
	response, err := p.Session.Login(s.ctx, c.Identifier, c.Password, c.Account)
	if err != nil {
		return err
	}
	if response.IsMultiAccount() {
		s.printf("%s has several accounts:\n", c.Identifier)
		for _, account := range response.MultiAccount.Accounts {
			s.printf("  %s\t%s\t%s\n", account.ID, value(account.Name), account.Role)
		}
		return fmt.Errorf("select an account with --account")
	}
	s.printf("signed in as %s\n", describe(&response.Auth.User))
	return nil
}

func (c *LogoutCommand) Execute(_ []string) error {
	s := c.service
	p, _, err := s.portal()
	if err != nil {
		return err
	}
	defer p.Close()
	if err = p.Session.Logout(s.ctx, c.PushToken); err != nil {
		return err
	}
	s.printf("signed out\n")
	return nil
}

func (c *WhoamiCommand) Execute(_ []string) error {
	s := c.service
	p, _, err := s.portal()
	if err != nil {
		return err
	}
	defer p.Close()
	if err = p.Session.Restore(s.ctx); err != nil {
		return err
	}
	user := p.Session.User()
	if user == nil {
		s.printf("not signed in\n")
		return nil
	}
	s.printf("%s\n", describe(user))
	return nil
}

func (c *StatusCommand) Execute(_ []string) error {
	s := c.service
	p, options, err := s.portal()
	if err != nil {
		return err
	}
	defer p.Close()
	s.printf("base url: %s\n", options.BaseURL)
	s.printf("store:    %s\n", options.Auth.Store)
	token, err := p.Store.LookupToken(s.ctx)
	if err != nil {
		return err
	}
	switch {
	case token == nil:
		s.printf("session:  none\n")
	case token.Expiry.IsZero():
		s.printf("session:  stored\n")
	default:
		state := "valid"
		if !token.Valid() {
			state = "expired, will refresh"
		}
		s.printf("session:  stored, access token %s until %s\n", state, token.Expiry.Local().Format(time.RFC3339))
	}
	return nil
}

func (c *GetCommand) Execute(_ []string) error {
	s := c.service
	p, _, err := s.portal()
	if err != nil {
		return err
	}
	defer p.Close()
	var body json.RawMessage
	if err = p.Client.Do(s.ctx, http.MethodGet, c.Args.Path, nil, &body); err != nil {
		return err
	}
	if len(body) == 0 {
		return nil
	}
	formatted := &bytes.Buffer{}
	if err = json.Indent(formatted, body, "", "  "); err != nil {
		formatted.Reset()
		formatted.Write(body)
	}
	s.printf("%s\n", formatted.String())
	return nil
}

func (c *VersionCommand) Execute(_ []string) error {
	s := c.service
	s.printf("%s\n", figure.NewFigure("portal", "", true).String())
	s.printf("portal %s\n", Version)
	return nil
}

func describe(user *schema.AuthUser) string {
	return fmt.Sprintf("%s (%s, %s)", value(user.Name), user.ID, user.Role)
}

func value(text *string) string {
	if text == nil || *text == "" {
		return "-"
	}
	return *text
}
