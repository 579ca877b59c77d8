package core

import (
	"github.com/jessevdk/go-flags"
)

func CreateHelpErr() error {
	err := flags.Error{
		Type:    flags.ErrHelp,
		Message: "show help message",
	}
	return &err
}
