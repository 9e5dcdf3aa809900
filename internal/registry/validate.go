package registry

import (
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/thoreinstein/snapkeep/internal/errors"
)

// namePattern keeps names safe as the prefix of a snapshot directory name.
var namePattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)

var nameRules = []validation.Rule{
	validation.Required,
	validation.Length(1, 64),
	validation.Match(namePattern).Error("must start with a letter or digit and contain only letters, digits, '.', '_' or '-'"),
}

// Validate checks the item's fields. It does not check uniqueness.
func (i SyncItem) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.Name, nameRules...),
		validation.Field(&i.SourcePath, validation.Required),
		validation.Field(&i.BackupRoot, validation.Required),
		validation.Field(&i.Group, validation.When(i.Group != "", nameRules...)),
	)
}

// Validate checks the group's fields. It does not check uniqueness.
func (g SyncGroup) Validate() error {
	return validation.ValidateStruct(&g,
		validation.Field(&g.Name, nameRules...),
		validation.Field(&g.Description, validation.Length(0, 256)),
	)
}

// Validate checks every entry, name uniqueness, and that every item's
// group exists.
func (r *Registry) Validate() error {
	groups := make(map[string]bool, len(r.Groups))
	for _, g := range r.Groups {
		if err := g.Validate(); err != nil {
			return errors.Wrapf(err, "group %q", g.Name)
		}
		if groups[g.Name] {
			return errors.Newf("duplicate group %q", g.Name)
		}
		groups[g.Name] = true
	}

	items := make(map[string]bool, len(r.Items))
	for _, it := range r.Items {
		if err := it.Validate(); err != nil {
			return errors.Wrapf(err, "item %q", it.Name)
		}
		if items[it.Name] {
			return errors.Newf("duplicate item %q", it.Name)
		}
		items[it.Name] = true
		if it.Group != "" && !groups[it.Group] {
			return errors.Newf("item %q references unknown group %q", it.Name, it.Group)
		}
	}
	return nil
}
