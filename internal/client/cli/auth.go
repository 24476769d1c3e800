package cli

import (
	"context"
	"os"
)

// Register creates a new account. On success the user still has to log in to
// obtain a token.
func (a *App) Register(ctx context.Context) error {

	userName, err := GetSimpleText(a.reader, "Enter user name", os.Stdout)
	if err != nil {
		printlnFn(err.Error())
		return err
	}

	password, err := GetPassword(os.Stdout)
	if err != nil {
		printlnFn(err.Error())
		return err
	}

	user, err := a.api.Signup(ctx, userName, password)
	if err != nil {
		printlnFn(err.Error())
		return err
	}

	printlnFn("Registered as", user.Username)
	return nil
}

func (a *App) Login(ctx context.Context) error {

	userName, err := GetSimpleText(a.reader, "Enter user name", os.Stdout)
	if err != nil {
		printlnFn(err.Error())
		return err
	}

	password, err := GetPassword(os.Stdout)
	if err != nil {
		printlnFn(err.Error())
		return err
	}

	if _, err := a.api.Login(ctx, userName, password); err != nil {
		printlnFn(err.Error())
		return err
	}

	a.userName = userName
	printlnFn("Logged in as", userName)
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	a.api.SetToken("")
	a.userName = ""
	printlnFn("Logged out")
	return nil
}
