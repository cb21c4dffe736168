package main

import (
	"fmt"
	"strconv"

	"krishiconnect/internal/client"
	"krishiconnect/internal/model"

	"github.com/spf13/cobra"
)

func (a *app) langCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lang [code]",
		Short: "Show or choose the interface language",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				for _, l := range a.catalog.Languages() {
					marker := " "
					if l.Code == a.state.Language {
						marker = "*"
					}
					fmt.Fprintf(a.out, "%s %s  %s (%s)\n", marker, l.Code, l.Native, l.Name)
				}
				return nil
			}
			if err := a.state.SetLanguage(args[0]); err != nil {
				return err
			}
			fmt.Fprintln(a.out, a.t("welcome"))
			a.say(cmd, "voice.language_selected")
			return nil
		},
	}
}

func (a *app) voiceCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "voice on|off",
		Short:     "Turn voice guidance on or off",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"on", "off"},
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "on":
				a.state.SetVoice(true)
			case "off":
				a.state.SetVoice(false)
			default:
				return fmt.Errorf("expected on or off, got %q", args[0])
			}
			fmt.Fprintf(a.out, "voice: %s\n", args[0])
			return nil
		},
	}
}

func (a *app) screenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "screen [name]",
		Short: "Show the current screen or move to another",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				to, err := client.ParseScreen(args[0])
				if err != nil {
					return err
				}
				if err := a.state.Navigate(to); err != nil {
					return err
				}
				switch to {
				case client.ScreenLogin:
					a.say(cmd, "voice.opening_login")
				case client.ScreenRegister:
					a.say(cmd, "voice.opening_register")
				case client.ScreenFarmerDashboard:
					a.say(cmd, "voice.farmer_dashboard")
				case client.ScreenBuyerDashboard:
					a.say(cmd, "voice.buyer_dashboard")
				}
			}
			fmt.Fprintln(a.out, a.state.Screen)
			return nil
		},
	}
}

func (a *app) registerCmd() *cobra.Command {
	var req model.RegisterRequest
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a farmer or buyer account",
		RunE: func(cmd *cobra.Command, args []string) error {
			if req.Role == "" {
				req.Role = a.state.Role
			}
			if req.Language == "" {
				req.Language = a.state.Language
			}
			if req.Name == "" || req.Phone == "" || req.Password == "" || req.Location == "" || req.Role == "" {
				a.say(cmd, "voice.fill_all_fields")
				return fmt.Errorf("name, phone, password, location and role are required")
			}

			ctx, cancel := a.ctx(cmd)
			defer cancel()
			resp, err := a.api.Register(ctx, req)
			if err != nil {
				return a.fail(cmd, err)
			}
			return a.signIn(cmd, resp)
		},
	}
	f := cmd.Flags()
	f.StringVar(&req.Name, "name", "", "Full name or business name")
	f.StringVar(&req.Phone, "phone", "", "10 digit mobile number")
	f.StringVar(&req.Password, "password", "", "Password (min 6 characters)")
	f.StringVar(&req.Role, "role", "", "farmer or buyer")
	f.StringVar(&req.Location, "location", "", "Village or business location")
	f.StringVar(&req.BusinessType, "business-type", "", "retailer, wholesaler, restaurant or exporter (buyers)")
	return cmd
}

func (a *app) loginCmd() *cobra.Command {
	var req model.LoginRequest
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in as a farmer or buyer",
		RunE: func(cmd *cobra.Command, args []string) error {
			if req.Role == "" {
				req.Role = a.state.Role
			}
			if err := a.state.ChooseRole(req.Role); err != nil {
				return err
			}

			ctx, cancel := a.ctx(cmd)
			defer cancel()
			resp, err := a.api.Login(ctx, req)
			if err != nil {
				return a.fail(cmd, err)
			}
			return a.signIn(cmd, resp)
		},
	}
	f := cmd.Flags()
	f.StringVar(&req.Phone, "phone", "", "10 digit mobile number")
	f.StringVar(&req.Password, "password", "", "Password")
	f.StringVar(&req.Role, "role", "", "farmer or buyer")
	_ = cmd.MarkFlagRequired("phone")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func (a *app) signIn(cmd *cobra.Command, resp *model.AuthResponse) error {
	if err := a.state.SignIn(resp); err != nil {
		return err
	}
	a.api.SetToken(resp.Token)
	fmt.Fprintf(a.out, "%s, %s!\n", a.t("welcome"), resp.User.Name)
	if resp.User.Role == model.RoleFarmer {
		a.say(cmd, "voice.farmer_dashboard")
	} else {
		a.say(cmd, "voice.buyer_dashboard")
	}
	return nil
}

func (a *app) logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and empty the cart",
		RunE: func(cmd *cobra.Command, args []string) error {
			a.state.SignOut()
			fmt.Fprintln(a.out, a.t("logout"))
			a.say(cmd, "logout")
			return nil
		},
	}
}

func (a *app) whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in account",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireSignIn(); err != nil {
				return a.fail(cmd, err)
			}
			ctx, cancel := a.ctx(cmd)
			defer cancel()
			u, err := a.api.Profile(ctx)
			if err != nil {
				return a.fail(cmd, err)
			}
			fmt.Fprintf(a.out, "%s (%s) %s, %s\n", u.Name, u.Role, u.Phone, u.Location)
			return nil
		},
	}
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return id, nil
}
