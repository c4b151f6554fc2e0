package main

import (
	"log"
	"os"

	"github.com/gbl08ma/sqalx"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/gbl08ma/keybox"
	"github.com/railrouted/trainrouter/compute"
	"github.com/railrouted/trainrouter/types"
)

var (
	rdb           *sqlx.DB
	rootSqalxNode sqalx.Node
	secrets       *keybox.Keybox
	jobRunner     *compute.JobRunner
	mainLog       = log.New(os.Stdout, "", log.Ldate|log.Ltime)
	routeLog      = log.New(os.Stdout, "route", log.Ldate|log.Ltime)
	webLog        = log.New(os.Stdout, "web", log.Ldate|log.Ltime)

	// GitCommit is provided by govvv at compile-time
	GitCommit = "???"
	// BuildDate is provided by govvv at compile-time
	BuildDate = "???"
)

func main() {
	var err error
	if DEBUG {
		mainLog.Println("Server starting in debug mode")
	}
	mainLog.Println("Opening keybox...")
	secrets, err = keybox.Open(SecretsPath)
	if err != nil {
		mainLog.Fatalln(err)
	}
	mainLog.Println("Keybox opened")

	mainLog.Println("Opening database...")
	databaseURI, present := secrets.Get("databaseURI")
	if !present {
		mainLog.Fatalln("Database connection string not present in keybox")
	}
	rdb, err = sqlx.Open("postgres", databaseURI)
	if err != nil {
		mainLog.Fatalln(err)
	}
	defer rdb.Close()

	err = rdb.Ping()
	if err != nil {
		mainLog.Fatalln(err)
	}
	rdb.SetMaxOpenConns(MaxDBconnectionPoolSize)

	rootSqalxNode, err = sqalx.New(rdb)
	if err != nil {
		mainLog.Fatalln(err)
	}

	err = types.CreateSchema(rootSqalxNode)
	if err != nil {
		mainLog.Fatalln(err)
	}
	mainLog.Println("Database opened")

	jobRunner = compute.NewJobRunner(types.NewDBStore(rootSqalxNode), routeLog)
	jobRunner.Telemetry = JobTelemetry
	defer jobRunner.Wait()

	go StatsSender()

	APIserver()
}
