package config

type Config struct {
	Debug  bool   `mapstructure:"debug"`
	Server Server `mapstructure:"server"`
	Upload Upload `mapstructure:"upload"`
	Store  Store  `mapstructure:"store"`
	Media  Media  `mapstructure:"media"`
}

type Server struct {
	Address   string `mapstructure:"address" validate:"omitempty,hostname|ip"`
	Port      int    `mapstructure:"port" validate:"required,min=1,max=65535"`
	PublicUrl string `mapstructure:"public_url" validate:"omitempty,url"`
}

type Upload struct {
	Password    string `mapstructure:"password" validate:"required"`
	MaxFileSize int64  `mapstructure:"max_file_size" validate:"required,min=1"`
}

type Store struct {
	Strategy string         `mapstructure:"strategy" validate:"required,oneof=mongo sql memory"`
	Mongo    *MongoStrategy `mapstructure:"mongo" validate:"required_if=Strategy mongo"`
	SQL      *SQLStrategy   `mapstructure:"sql" validate:"required_if=Strategy sql"`
}

type MongoStrategy struct {
	URI        string `mapstructure:"uri" validate:"required"`
	Database   string `mapstructure:"database" validate:"required"`
	Collection string `mapstructure:"collection" validate:"required"`
}

type SQLStrategy struct {
	Driver      string  `mapstructure:"driver" validate:"required,oneof=postgres mysql"`
	DSN         string  `mapstructure:"dsn" validate:"required"`
	TablePrefix *string `mapstructure:"table_prefix"`
}

type Media struct {
	Strategy   string              `mapstructure:"strategy" validate:"required,oneof=filesystem s3"`
	Filesystem *FilesystemStrategy `mapstructure:"filesystem" validate:"required_if=Strategy filesystem"`
	S3         *S3Strategy         `mapstructure:"s3" validate:"required_if=Strategy s3"`
}

type FilesystemStrategy struct {
	Path       string `mapstructure:"path" validate:"required"`
	PublicPath string `mapstructure:"public_path" validate:"required"`
}

type S3Strategy struct {
	Endpoint    string `mapstructure:"endpoint"`
	Region      string `mapstructure:"region" validate:"required"`
	Bucket      string `mapstructure:"bucket" validate:"required"`
	AccessKeyId string `mapstructure:"access_key_id" validate:"required"`
	SecretKeyId string `mapstructure:"secret_key_id" validate:"required"`
	PublicUrl   string `mapstructure:"public_url" validate:"required,url"`
}
