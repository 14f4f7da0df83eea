package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/google/uuid"

	"github.com/sangamlabs/sangam/internal/client/api"
	"github.com/sangamlabs/sangam/internal/client/session"
	"github.com/sangamlabs/sangam/internal/client/store"
	"github.com/sangamlabs/sangam/internal/common"
)

func (a *App) Login(ctx context.Context) {
	email, err := GetSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		a.log.Error(ctx, "input error", "error", err)
		return
	}

	password, err := GetPassword(os.Stdout)
	if err != nil {
		a.log.Error(ctx, "input error", "error", err)
		return
	}
	defer common.WipeByteArray(password)

	res, err := a.api.Login(ctx, email, string(password))
	if err != nil {
		switch {
		case errors.Is(err, api.ErrUnavailable):
			fmt.Println("Server unavailable, try again later")
		case errors.Is(err, api.ErrUnauthorized):
			fmt.Println("Invalid email or password")
		default:
			fmt.Printf("Login failed: %s\n", err.Error())
		}
		return
	}

	a.finishAuth(ctx, res)
	fmt.Printf("Welcome back, %s!\n", res.User.Name)
}

func (a *App) Register(ctx context.Context) {
	name, err := GetSimpleText(a.reader, "Enter your name", os.Stdout)
	if err != nil {
		a.log.Error(ctx, "input error", "error", err)
		return
	}
	email, err := GetSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		a.log.Error(ctx, "input error", "error", err)
		return
	}
	password, err := GetPassword(os.Stdout)
	if err != nil {
		a.log.Error(ctx, "input error", "error", err)
		return
	}
	defer common.WipeByteArray(password)

	res, err := a.api.Register(ctx, name, email, string(password))
	if err != nil {
		fmt.Printf("Registration failed: %s\n", err.Error())
		return
	}

	a.finishAuth(ctx, res)
	fmt.Printf("Account created. Welcome, %s!\n", res.User.Name)
}

// finishAuth persists the session before anything else happens, then kicks
// off the best-effort device registration.
func (a *App) finishAuth(ctx context.Context, res *api.AuthResult) {
	user := &session.UserSnapshot{
		ID:              res.User.ID,
		Name:            res.User.Name,
		Email:           res.User.Email,
		ProfileComplete: res.User.ProfileComplete,
		Package:         res.User.Package,
	}

	if err := a.state.SetSession(ctx, res.Token, user); err != nil {
		a.log.Error(ctx, "session save failed", "error", err)
		fmt.Println("Could not save session; you may have to log in again next time")
	}

	if res.Limitation != nil {
		if data, err := json.Marshal(res.Limitation); err == nil {
			if err := a.store.Set(ctx, store.KeyLimitation, data); err != nil {
				a.log.Warn(ctx, "limitation save failed", "error", err)
			}
		}
	}

	a.syncDeviceToken(ctx)
}

// syncDeviceToken registers the device id and push token with the server.
// Best-effort: failures are logged by the runner and never block the flow.
func (a *App) syncDeviceToken(ctx context.Context) {
	a.tasks.Go(ctx, "device-token-sync", func(ctx context.Context) error {
		deviceID, err := a.deviceID(ctx)
		if err != nil {
			return err
		}
		fcmToken := os.Getenv("SANGAM_FCM_TOKEN")
		return a.api.RegisterDevice(ctx, deviceID, fcmToken)
	})
}

// deviceID returns the stable per-install device id, generating one on
// first use.
func (a *App) deviceID(ctx context.Context) (string, error) {
	v, err := a.store.Get(ctx, store.KeyDeviceID)
	if err != nil {
		return "", err
	}
	if len(v) > 0 {
		return string(v), nil
	}

	id := uuid.NewString()
	if err := a.store.Set(ctx, store.KeyDeviceID, []byte(id)); err != nil {
		return "", err
	}
	return id, nil
}

func (a *App) Logout(ctx context.Context) {
	if err := a.state.Teardown(ctx); err != nil {
		a.log.Error(ctx, "logout failed", "error", err)
		fmt.Println("Logout failed")
		return
	}
	fmt.Println("Logged out")
}

func (a *App) WhoAmI(ctx context.Context) {
	user := a.state.User()
	if user == nil {
		fmt.Println("Not logged in")
		return
	}

	// Explicit refresh of the cached snapshot.
	fresh, err := a.api.UserDetails(ctx)
	if err != nil {
		if errors.Is(err, api.ErrUnauthorized) {
			fmt.Println("Session rejected by server, please log in again")
			_ = a.state.Teardown(ctx)
			return
		}
		a.log.Warn(ctx, "user details refresh failed, showing cached snapshot", "error", err)
	} else {
		snapshot := &session.UserSnapshot{
			ID:              fresh.ID,
			Name:            fresh.Name,
			Email:           fresh.Email,
			ProfileComplete: fresh.ProfileComplete,
			Package:         fresh.Package,
		}
		if err := a.state.SetUser(ctx, snapshot); err != nil {
			a.log.Warn(ctx, "snapshot update failed", "error", err)
		}
		user = snapshot
	}

	fmt.Printf("#%d %s <%s>  package=%s profile_complete=%v\n",
		user.ID, user.Name, user.Email, user.Package, user.ProfileComplete)
}
