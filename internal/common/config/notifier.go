package config

type (
	// NotifierConfig represents the configuration for booking event delivery
	NotifierConfig struct {
		Type  string         `yaml:"type"` // noop, log, redis or composite
		Redis RedisConfig    `yaml:"redis"`
		Staff []StaffContact `yaml:"staff"` // recipients attached to every event
	}

	// RedisConfig represents the configuration for Redis-based notifier
	RedisConfig struct {
		ClusterType string `yaml:"cluster_type"` // single, sentinel, cluster
		Addr        string `yaml:"addr"`         // multiple addresses separated by ; or ,
		MasterName  string `yaml:"master_name"`
		Username    string `yaml:"username"`
		Password    string `yaml:"password"`
		DB          int    `yaml:"db"`
		Stream      string `yaml:"stream"`
	}

	// StaffContact is one operator reachable by SMS gateway or email
	StaffContact struct {
		Name    string `yaml:"name" json:"name"`
		Phone   string `yaml:"phone" json:"phone,omitempty"`
		Carrier string `yaml:"carrier" json:"carrier,omitempty"` // SMS gateway carrier, e.g. "att", "tmobile"
		Email   string `yaml:"email" json:"email,omitempty"`
	}
)
