package handler

import (
	"fmt"

	env "github.com/Netflix/go-env"
)

// EnvVars has all environment variables that should be given to Lambda function
type EnvVars struct {
	// From arguments
	AthenaDBName string `env:"ATHENA_DB_NAME"`
	S3Bucket     string `env:"S3_BUCKET"`
	S3Prefix     string `env:"S3_PREFIX"`
	SentryDSN    string `env:"SENTRY_DSN"`
	SentryEnv    string `env:"SENTRY_ENVIRONMENT"`
	LogLevel     string `env:"LOG_LEVEL"`

	// From resource
	MetaTableName string `env:"META_TABLE_NAME"`

	// From AWS Lambda
	AwsRegion string `env:"AWS_REGION"`
}

// BindEnvVars loads environments variables and set them to EnvVars
func (x *EnvVars) BindEnvVars() error {
	if _, err := env.UnmarshalFromEnviron(x); err != nil {
		Logger.WithError(err).Error("Failed UnmarshalFromEviron")
		return err
	}

	return nil
}

// AthenaOutputPath returns S3 URL for Athena query results
func (x *EnvVars) AthenaOutputPath() string {
	return fmt.Sprintf("s3://%s/%soutput", x.S3Bucket, x.S3Prefix)
}
