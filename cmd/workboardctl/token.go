package main

import (
	"context"
	"fmt"
	"os"

	"github.com/goliatone/go-workboard/pkg/sqlstore"
)

type tokenCmd struct {
	Issue  tokenIssueCmd  `cmd:"" help:"Issue a bearer token for an owner."`
	Revoke tokenRevokeCmd `cmd:"" help:"Revoke a bearer token."`
}

type tokenIssueCmd struct {
	Owner string `required:"" help:"Owner id the token resolves to."`
}

func (cmd *tokenIssueCmd) Run(ctx context.Context, g *Globals) error {
	a, err := newApp(g)
	if err != nil {
		return err
	}
	defer a.Close()
	db, err := a.localDB()
	if err != nil {
		return err
	}
	token, err := sqlstore.NewTokenStore(db).Issue(ctx, cmd.Owner)
	if err != nil {
		return err
	}
	fmt.Fprintln(os.Stdout, token)
	return nil
}

type tokenRevokeCmd struct {
	Token string `arg:"" help:"Token to revoke."`
}

func (cmd *tokenRevokeCmd) Run(ctx context.Context, g *Globals) error {
	a, err := newApp(g)
	if err != nil {
		return err
	}
	defer a.Close()
	db, err := a.localDB()
	if err != nil {
		return err
	}
	return sqlstore.NewTokenStore(db).Revoke(ctx, cmd.Token)
}
