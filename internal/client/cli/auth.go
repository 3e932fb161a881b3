package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/avoronov/gatekeeper/internal/client/client"
	"github.com/avoronov/gatekeeper/internal/shared"
)

// Register prompts for a username and password and creates an account on the
// server. The password bytes are wiped once the call returns.
func (a *App) Register(ctx context.Context) error {

	userName, err := GetSimpleText(a.reader, "Enter username", os.Stdout)
	if err != nil {
		return err
	}

	password, err := GetPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer shared.WipeByteArray(password)

	if err := a.authService.Register(ctx, userName, password); err != nil {
		if errors.Is(err, client.ErrAlreadyExists) {
			fmt.Println("This username is taken")
			return err
		}
		fmt.Printf("Registration unsuccessful: %s\n", err.Error())
		return err
	}

	fmt.Println("Registered. You can now log in.")
	return nil
}

// Login prompts for credentials and authenticates against the server. On
// success the session is persisted, so later runs start logged in.
func (a *App) Login(ctx context.Context) error {

	userName, err := GetSimpleText(a.reader, "Enter username", os.Stdout)
	if err != nil {
		return err
	}

	password, err := GetPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer shared.WipeByteArray(password)

	if err := a.authService.Login(ctx, userName, password); err != nil {
		if errors.Is(err, client.ErrUnavailable) {
			fmt.Println("Server unavailable, try again later")
		} else {
			fmt.Printf("Login unsuccessful: %s\n", err.Error())
		}
		return err
	}

	fmt.Println("Login successful")
	return nil
}

// Whoami fetches and prints the profile of the logged-in user.
func (a *App) Whoami(ctx context.Context) error {

	user, err := a.authService.Profile(ctx)
	if err != nil {
		if errors.Is(err, client.ErrUnauthorized) {
			fmt.Println("Not logged in (or session expired)")
		} else {
			fmt.Printf("Profile request failed: %s\n", err.Error())
		}
		return err
	}

	fmt.Printf("id: %s\nusername: %s\n", user.ID, user.Username)
	return nil
}

// Logout discards the stored session.
func (a *App) Logout(ctx context.Context) error {

	if err := a.authService.Logout(ctx); err != nil {
		fmt.Printf("Logout failed: %s\n", err.Error())
		return err
	}

	fmt.Println("Logged out")
	return nil
}
