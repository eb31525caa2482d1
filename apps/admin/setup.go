package main

import (
	"context"
	"errors"

	"github.com/trezcool/missingwork/core/profile"
)

// setup completes the first-run setup, prompting for the missing fields on a terminal.
func (cli *commandLine) setup(ctx context.Context, args []string) error {
	fs := cli.newFlagSet("setup")
	name := fs.String("name", "", "The teacher's name.")
	appName := fs.String("app", "", "The name shown on the app and in emails.")
	logo := fs.String("logo", "", "Path to the school logo (JPEG, PNG or GIF).")
	if err := parse(fs, args); err != nil {
		return err
	}

	var err error
	for _, f := range []struct {
		val   *string
		label string
	}{
		{name, "Your name"},
		{appName, "App name"},
		{logo, "School logo file"},
	} {
		if *f.val != "" {
			continue
		}
		if *f.val, err = cli.prompt(f.label); err != nil {
			return err
		}
	}
	if *name == "" || *appName == "" || *logo == "" {
		return usage(fs)
	}

	data := profile.Setup{Name: *name, AppName: *appName}
	if data.Logo, err = cli.encodeImage(*logo); err != nil {
		return err
	}
	p, err := cli.profiles.CompleteSetup(ctx, data)
	if err != nil {
		return err
	}
	cli.printf("Welcome %s, %s is ready.\n", p.Name, p.AppName)
	return nil
}

func (cli *commandLine) status(ctx context.Context) error {
	p, err := cli.profiles.Get(ctx)
	if errors.Is(err, profile.ErrNotConfigured) {
		cli.printf("setup required, run: setup -name NAME -app APP_NAME -logo FILE\n")
		return nil
	} else if err != nil {
		return err
	}
	cli.printf("%s (%s)\n", p.AppName, p.Name)
	return nil
}
