package cmd

type Config struct {
	HTTPPort               string
	DBHost                 string
	DBPort                 string
	DBUser                 string
	DBPassword             string
	DBName                 string
	DBSslMode              string
	GeoServiceURL          string
	KafkaHost              string
	KafkaOrderChangedTopic string
	DocumentRoot           string
	DocumentBaseURL        string
	DraftRetentionHours    int
}
