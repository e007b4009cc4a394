package config

type config struct {
	Mysql     mysql     `yaml:"mysql" mapstructure:"mysql"`
	Redis     redis     `yaml:"redis" mapstructure:"redis"`
	RabbitMq  rabbitmq  `yaml:"rabbitmq" mapstructure:"rabbitmq"`
	Minio     minio     `yaml:"minio" mapstructure:"minio"`
	Snowflake snowflake `yaml:"snowflake" mapstructure:"snowflake"`
}

type mysql struct {
	Addr     string `yaml:"addr"`
	Database string `yaml:"database"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	Charset  string `yaml:"charset"`
}

type redis struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type rabbitmq struct {
	Addr     string `yaml:"addr"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

type minio struct {
	Endpoint        string `yaml:"endpoint"`
	AccessKeyID     string `yaml:"access_key_id"`
	SecretAccessKey string `yaml:"secret_access_key"`
	UseSSL          bool   `yaml:"use_ssl"`
	PublicBaseURL   string `yaml:"public_base_url"`
}

type snowflake struct {
	WorkerID     int64 `yaml:"worker_id" mapstructure:"worker_id"`
	DatacenterID int64 `yaml:"datacenter_id" mapstructure:"datacenter_id"`
}
