package app

import (
	"github.com/spf13/afero"
	"github.com/vk/nodegrid/internal/registry"
	"github.com/vk/nodegrid/modules/file"
	"github.com/vk/nodegrid/modules/math"
	"github.com/vk/nodegrid/modules/text"
)

// coreModules is the definitive list of all modules that are compiled into
// the nodegrid binary. File nodes operate on fs.
func coreModules(fs afero.Fs) []registry.Module {
	return []registry.Module{
		&math.Module{},
		&text.Module{},
		&file.Module{Fs: fs},
	}
}
