package redis

type _Redis struct {
	Addr     string
	Password string
	DB       int
}

var VideoInfo = _Redis{Addr: "localhost:6379", DB: 1}
