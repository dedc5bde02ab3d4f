package config

type config struct {
	Server    server    `yaml:"server" mapstructure:"server"`
	Mysql     mysql     `yaml:"mysql" mapstructure:"mysql"`
	Redis     redis     `yaml:"redis" mapstructure:"redis"`
	RabbitMq  rabbitmq  `yaml:"rabbitmq" mapstructure:"rabbitmq"`
	Jwt       jwt       `yaml:"jwt" mapstructure:"jwt"`
	Storage   storage   `yaml:"storage" mapstructure:"storage"`
	Minio     minio     `yaml:"minio" mapstructure:"minio"`
	RateLimit ratelimit `yaml:"ratelimit" mapstructure:"ratelimit"`
}

type server struct {
	HttpAddr      string   `yaml:"http_addr" mapstructure:"http_addr"`
	WsAddr        string   `yaml:"ws_addr" mapstructure:"ws_addr"`
	AllowOrigins  []string `yaml:"allow_origins" mapstructure:"allow_origins"`
	MaxUploadSize int64    `yaml:"max_upload_size" mapstructure:"max_upload_size"`
	PprofAddr     string   `yaml:"pprof_addr" mapstructure:"pprof_addr"`
	NodeId        int64    `yaml:"node_id" mapstructure:"node_id"`
}

type mysql struct {
	Addr     string `yaml:"addr"`
	Database string `yaml:"database"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	Charset  string `yaml:"charset"`
	Params   string `yaml:"params"`
}

type redis struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	RankDB   int    `yaml:"rank_db" mapstructure:"rank_db"`
	PubSubDB int    `yaml:"pubsub_db" mapstructure:"pubsub_db"`
	// 关闭后广播只在进程内扇出
	PubSub bool `yaml:"pubsub" mapstructure:"pubsub"`
}

type rabbitmq struct {
	Addr     string `yaml:"addr"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

type jwt struct {
	Secret     string `yaml:"secret"`
	Timeout    string `yaml:"timeout"`
	MaxRefresh string `yaml:"max_refresh" mapstructure:"max_refresh"`
}

type storage struct {
	// local 或 minio
	Driver    string `yaml:"driver"`
	LocalDir  string `yaml:"local_dir" mapstructure:"local_dir"`
	PublicURL string `yaml:"public_url" mapstructure:"public_url"`
}

type minio struct {
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"access_key" mapstructure:"access_key"`
	SecretKey string `yaml:"secret_key" mapstructure:"secret_key"`
	UseSSL    bool   `yaml:"use_ssl" mapstructure:"use_ssl"`
	Bucket    string `yaml:"bucket"`
	PublicURL string `yaml:"public_url" mapstructure:"public_url"`
}

// ratelimit 互动写操作按用户限流, 需要 Redis
type ratelimit struct {
	Enabled     bool   `yaml:"enabled"`
	Algorithm   string `yaml:"algorithm"`
	Window      string `yaml:"window"`
	MaxRequests int64  `yaml:"max_requests" mapstructure:"max_requests"`
}
