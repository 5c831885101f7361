package util

import (
	"errors"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"github.com/shanecorder/slurm-schmutz/pkg/models"
)

var Fatal = fatalError

func fatalError(cmd *cobra.Command, err error, code int) {
	if msg := err.Error(); msg != "" {
		if !strings.HasSuffix(msg, "\n") {
			msg += "\n"
		}
		cmd.PrintErr(text.FgRed.Sprint(msg))
	}

	var base *models.BaseError
	if errors.As(err, &base) && base.Hint() != "" {
		cmd.PrintErrln(text.FgYellow.Sprint("hint: " + base.Hint()))
	}

	os.Exit(code)
}
