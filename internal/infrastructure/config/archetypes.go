package config

// ArchetypesConfig is the root config for archetypes.yaml
type ArchetypesConfig struct {
	Archetypes map[string]ArchetypeConfig `yaml:"archetypes"`
}

// ArchetypeConfig describes how to build one kind of entity.
// Speeds are world units per second; timers are ticks.
type ArchetypeConfig struct {
	Radius        float64 `yaml:"radius"`
	Static        bool    `yaml:"static"`
	Passive       bool    `yaml:"passive"`
	MaxHealth     int     `yaml:"maxHealth"`
	Iframes       int     `yaml:"iframes"`
	ContactDamage int     `yaml:"contactDamage"`
	Knockback     float64 `yaml:"knockback"`
	Speed         float64 `yaml:"speed"`
	SightRange    float64 `yaml:"sightRange"`
	FireCooldown  int     `yaml:"fireCooldown"`
	Lifetime      int     `yaml:"lifetime"`
	Reach         float64 `yaml:"reach"`
	Heal          int     `yaml:"heal"`
	PotionChance  float64 `yaml:"potionChance"`
	SplitInto     string  `yaml:"splitInto"`
	SplitCount    int     `yaml:"splitCount"`
}

// Get returns the archetype with the given name
func (c *ArchetypesConfig) Get(name string) (ArchetypeConfig, bool) {
	a, ok := c.Archetypes[name]
	return a, ok
}
