package config

import (
	"errors"
	"flag"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// ParseFlags parses the server command-line flags from args.
//
// Flags:
//
//	-a server address in format [host]:[port]
//	-grpc-address grpc server address in format [host]:[port]
//	-d database DSN
//	-c/-config json file path with configs
//	-secret-key token signing secret
//	-algorithm token signing algorithm (HS256, HS384, HS512)
//	-access-token-expire-minutes access token lifetime in minutes
//	-token-issuer token issuer name
//	-bcrypt-cost password hashing cost
//	-request-timeout request timeout (e.g., "30s", "1m")
//	-cors-origins comma separated list of allowed browser origins
func ParseFlags(args []string) (*StructuredConfig, error) {
	var serverAddress, grpcServerAddress NetAddress
	var databaseDSN string
	var jsonConfigPath string
	var secretKey string
	var algorithm string
	var accessTokenExpireMinutes int
	var tokenIssuer string
	var bcryptCost int
	var requestTimeout time.Duration
	var corsOrigins string

	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	fs.Var(&serverAddress, "a", "Net address host:port")
	fs.Var(&grpcServerAddress, "grpc-address", "Net grpc server address host:port")
	fs.StringVar(&databaseDSN, "d", "", "Database DSN")
	fs.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	fs.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	fs.StringVar(&secretKey, "secret-key", "", "Token signing secret")
	fs.StringVar(&algorithm, "algorithm", "", "Token signing algorithm")
	fs.IntVar(&accessTokenExpireMinutes, "access-token-expire-minutes", 0, "Access token lifetime in minutes")
	fs.StringVar(&tokenIssuer, "token-issuer", "", "Token issuer")
	fs.IntVar(&bcryptCost, "bcrypt-cost", 0, "Password hashing cost")
	fs.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	fs.StringVar(&corsOrigins, "cors-origins", "", "Comma separated allowed CORS origins")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("error parsing flags: %w", err)
	}

	return &StructuredConfig{
		App: App{
			SecretKey:                secretKey,
			Algorithm:                algorithm,
			AccessTokenExpireMinutes: accessTokenExpireMinutes,
			TokenIssuer:              tokenIssuer,
			BcryptCost:               bcryptCost,
		},
		Storage: Storage{
			DB: DB{
				DSN: databaseDSN,
			},
		},
		Server: Server{
			HTTPAddress:    serverAddress.String(),
			GRPCAddress:    grpcServerAddress.String(),
			RequestTimeout: requestTimeout,
			CORSOrigins:    splitList(corsOrigins),
		},
		JSONFilePath: jsonConfigPath,
	}, nil
}

// String returns a canonical host:port string for a NetAddress.
// If neither Host nor Port are set, it returns an empty string.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form host:port and populates the NetAddress.
// An empty host means all interfaces. Otherwise the host must be "localhost"
// or a valid IP address.
func (a *NetAddress) Set(s string) error {
	hostAndPort := strings.Split(s, ":")
	if len(hostAndPort) != 2 {
		return errors.New("need address in a form `host:port`")
	}

	host := hostAndPort[0]
	port, err := strconv.Atoi(hostAndPort[1])
	if err != nil {
		return err
	}

	if port < 1 {
		return errors.New("port number is a positive integer")
	}

	if host != "" && host != "localhost" {
		ip := net.ParseIP(host)
		if ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}

// splitList splits a comma separated flag value. An empty value is nil so
// lower priority sources still apply.
func splitList(value string) []string {
	if value == "" {
		return nil
	}
	return strings.Split(value, ",")
}
