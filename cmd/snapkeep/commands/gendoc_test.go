package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilePrepender(t *testing.T) {
	got := filePrepender("/tmp/docs/snapkeep_item_add.md")
	assert.Contains(t, got, `title: "item add"`)
	assert.Contains(t, got, `description: "Reference for snapkeep item add"`)
}

func TestLinkHandler(t *testing.T) {
	assert.Equal(t, "/docs/reference/snapkeep_backup/", linkHandler("snapkeep_backup.md"))
}
