package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/agentx-labs/assetctl/internal/install"
	"github.com/agentx-labs/assetctl/internal/registry"
)

// askFunc is swapped in tests.
var askFunc = func(p survey.Prompt, response interface{}) error {
	return survey.AskOne(p, response)
}

// updateConfirm returns the confirmation used when an asset needs newer
// versions of installed extensions. yes and skip answer without asking.
func updateConfirm(yes, skip bool) install.ConfirmFunc {
	return func(ctx context.Context, outOfDate []registry.ExtensionHeader) (bool, error) {
		if err := ctx.Err(); err != nil {
			return false, err
		}
		if skip {
			return false, nil
		}
		if yes {
			return true, nil
		}

		var update bool
		prompt := &survey.Confirm{
			Message: registry.UpdateMessage(outOfDate),
			Help:    "Skip the update to keep the installed versions. The new objects may not work as expected.",
			Default: true,
		}
		if err := askFunc(prompt, &update); err != nil {
			if errors.Is(err, terminal.InterruptErr) {
				return false, fmt.Errorf("update confirmation cancelled: %w", err)
			}
			return false, err
		}
		return update, nil
	}
}
