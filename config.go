package brainfuck

import (
	"os"

	"github.com/BurntSushi/toml"
)

// ToolConfig is what the command line tools decode from config.toml.
// Everything in it is optional: a missing file yields the defaults, and
// a missing [persistence] section means runs are not recorded.
type ToolConfig struct {
	Machine     *MachineConfig     `toml:"machine"`
	Persistence *PersistenceConfig `toml:"persistence"`
}

func DefaultToolConfig() *ToolConfig {
	return &ToolConfig{
		Machine: DefaultMachineConfig(),
	}
}

func LoadToolConfig(path string) (*ToolConfig, error) {
	config := DefaultToolConfig()

	conffile, err := os.Open(path)
	if os.IsNotExist(err) {
		return config, nil
	} else if err != nil {
		return nil, err
	}
	defer conffile.Close()

	if _, err := toml.NewDecoder(conffile).Decode(config); err != nil {
		return nil, err
	}

	if config.Machine == nil {
		config.Machine = DefaultMachineConfig()
	}
	if config.Machine.MemoryConfig == nil {
		config.Machine.MemoryConfig = &MemoryConfig{CellCount: DEFAULT_CELL_COUNT}
	}

	return config, nil
}
