package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/suparena/tablerepo"
	"github.com/suparena/tablerepo/repository/ddb"
)

var (
	versionFlag  = flag.Bool("version", false, "Show version information")
	vFlag        = flag.Bool("v", false, "Show version information (short)")
	manifestFlag = flag.String("manifest", "tables.yaml", "Path to the table manifest")
	timeoutFlag  = flag.Duration("timeout", 30*time.Second, "Overall timeout for the checks")
)

// manifest lists the tables an application expects, plus how to reach them.
type manifest struct {
	Connection ddb.Config `yaml:"connection"`
	Tables     []string   `yaml:"tables"`
}

func loadManifest(path string) (manifest, error) {
	var m manifest
	data, err := os.ReadFile(path)
	if err != nil {
		return m, fmt.Errorf("failed to read manifest: %w", err)
	}
	if err := yaml.Unmarshal(data, &m); err != nil {
		return m, fmt.Errorf("failed to parse manifest: %w", err)
	}
	return m, nil
}

func main() {
	// Parse flags early to catch version flag
	flag.Parse()

	// Handle version flag
	if *versionFlag || *vFlag {
		info := tablerepo.GetVersionInfo()
		fmt.Printf("TableRepo tablecheck version %s\n", info.Version)
		fmt.Printf("Git commit: %s\n", info.GitCommit)
		fmt.Printf("Build date: %s\n", info.BuildDate)
		fmt.Printf("Go version: %s\n", info.GoVersion)
		os.Exit(0)
	}

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, proceeding with environment variables")
	}

	m, err := loadManifest(*manifestFlag)
	if err != nil {
		log.Fatalf("tablecheck: %v", err)
	}
	if m.Connection.Region == "" {
		m.Connection = ddb.ConfigFromEnv()
	}
	if len(m.Tables) == 0 {
		log.Fatal("tablecheck: manifest lists no tables")
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeoutFlag)
	defer cancel()

	client, err := ddb.NewConnection(m.Connection).Client(ctx)
	if err != nil {
		log.Fatalf("tablecheck: %v", err)
	}

	failures := 0
	for _, table := range m.Tables {
		out, err := client.DescribeTable(ctx, &dynamodb.DescribeTableInput{
			TableName: aws.String(table),
		})
		if err != nil {
			fmt.Printf("FAIL  %s: %v\n", table, err)
			failures++
			continue
		}
		fmt.Printf("OK    %s: status=%s items=%d\n",
			table, out.Table.TableStatus, aws.ToInt64(out.Table.ItemCount))
	}

	if failures > 0 {
		log.Fatalf("tablecheck: %d of %d tables unavailable", failures, len(m.Tables))
	}
}
