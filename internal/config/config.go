package config

import "github.com/caarlos0/env/v9"

type Config struct {
	Port       string `env:"PORT" envDefault:"8080"`
	DBUser     string `env:"DB_USER,required"`
	DBPassword string `env:"DB_PASSWORD,required"`
	DBHost     string `env:"DB_HOST,required"` // e.g. tcp(host:3306) or unix(/cloudsql/instance)
	DBName     string `env:"DB_NAME,required"`
	DBPort     string `env:"DB_PORT" envDefault:"3306"`

	InstanceConnectionName string `env:"INSTANCE_CONNECTION_NAME"`

	FirebaseProjectID string `env:"FIREBASE_PROJECT_ID"`

	GeminiAPIKey    string `env:"GEMINI_API_KEY"`
	GeminiChatModel string `env:"GEMINI_CHAT_MODEL" envDefault:"gemini-2.5-flash"`

	// Impact partners. When a partner key is empty the offline mock adapter
	// covers the actions that partner would have handled.
	DigitalHumaniBaseURL      string `env:"DIGITALHUMANI_BASE_URL" envDefault:"https://api.digitalhumani.com"`
	DigitalHumaniAPIKey       string `env:"DIGITALHUMANI_API_KEY"`
	DigitalHumaniEnterpriseID string `env:"DIGITALHUMANI_ENTERPRISE_ID"`
	DigitalHumaniProjectID    string `env:"DIGITALHUMANI_PROJECT_ID"`

	GreensparkBaseURL string `env:"GREENSPARK_BASE_URL" envDefault:"https://api.getgreenspark.com"`
	GreensparkAPIKey  string `env:"GREENSPARK_API_KEY"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
