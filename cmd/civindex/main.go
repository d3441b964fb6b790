// Command civindex is a menu-driven front end over civ/kdtree/rtree:
// load a CSV dataset, build both index structures, and interactively
// run range queries, nearest-neighbor queries, inserts, deletes and
// the benchmark suite against them. Grounded on original_source/main.cpp's
// load-build-query sequence and the teacher's server/main.go for
// flag parsing and logger wiring.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"civspatial/bench"
	"civspatial/civ"
	"civspatial/kdtree"
	"civspatial/logger"
	"civspatial/rtree"
)

var (
	csvPath     = flag.String("csv", "", "path to a civilizations CSV file (id,name,latitude,longitude,startYear)")
	maxChildren = flag.Int("max-children", 8, "R-tree node fanout")
	logLevel    = flag.Int("log-level", logger.Info, "minimum log level to print (9=Debug .. 1=Fatal)")
)

func main() {
	flag.Parse()
	log := logger.NewLogger(os.Stdout, *logLevel)
	defer log.Close()

	var civs []civ.Civilization
	if *csvPath != "" {
		var err error
		civs, err = civ.LoadCSV(*csvPath)
		log.FatalIfErr(err, "load CSV %s", *csvPath)
		log.Info("loaded %d civilizations from %s", len(civs), *csvPath)
	} else {
		log.Warning("no -csv given, starting with an empty dataset")
	}

	rt := rtree.New(*maxChildren)
	var kt kdtree.Tree
	for _, c := range civs {
		rt.Insert(c)
		kt.Insert(c)
	}

	repl(log, rt, &kt, &civs)
}

func repl(log *logger.Logger, rt *rtree.Tree, kt *kdtree.Tree, civs *[]civ.Civilization) {
	scanner := bufio.NewScanner(os.Stdin)
	printMenu()
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			printMenu()
			continue
		}
		fields := strings.Fields(line)
		switch fields[0] {
		case "range":
			handleRange(log, rt, fields)
		case "nn":
			handleNN(log, rt, kt, fields)
		case "insert":
			handleInsert(log, rt, kt, civs, fields)
		case "delete":
			handleDelete(log, rt, civs, fields)
		case "height":
			log.Info("R-tree height: %d", rt.GetHeight())
		case "bench":
			bench.RunScalingBenchmark(log)
		case "validate":
			bench.RunValidation(log)
		case "quit", "exit":
			return
		default:
			log.Warning("unrecognized command %q", fields[0])
		}
		printMenu()
	}
}

func printMenu() {
	fmt.Println("\ncommands: range <latMin> <latMax> <lonMin> <lonMax> | nn <lat> <lon> | insert <id> <name> <lat> <lon> <startYear> | delete <id> <lat> <lon> | height | bench | validate | quit")
}

func handleRange(log *logger.Logger, rt *rtree.Tree, fields []string) {
	if len(fields) != 5 {
		log.Warning("usage: range <latMin> <latMax> <lonMin> <lonMax>")
		return
	}
	latMin, err1 := strconv.ParseFloat(fields[1], 64)
	latMax, err2 := strconv.ParseFloat(fields[2], 64)
	lonMin, err3 := strconv.ParseFloat(fields[3], 64)
	lonMax, err4 := strconv.ParseFloat(fields[4], 64)
	if err1 != nil || err2 != nil || err3 != nil || err4 != nil {
		log.Warning("could not parse range bounds")
		return
	}
	for _, c := range rt.Search(latMin, latMax, lonMin, lonMax) {
		fmt.Printf("  %d %s (%.4f, %.4f) %d\n", c.ID, c.Name, c.Latitude, c.Longitude, c.StartYear)
	}
}

func handleNN(log *logger.Logger, rt *rtree.Tree, kt *kdtree.Tree, fields []string) {
	if len(fields) != 3 {
		log.Warning("usage: nn <lat> <lon>")
		return
	}
	lat, err1 := strconv.ParseFloat(fields[1], 64)
	lon, err2 := strconv.ParseFloat(fields[2], 64)
	if err1 != nil || err2 != nil {
		log.Warning("could not parse coordinates")
		return
	}
	best, dist, found := rt.NearestNeighbor(lat, lon)
	if !found {
		log.Info("nearest (r-tree): none, tree is empty")
		return
	}
	log.Info("nearest (r-tree): %s (id=%d) at distance %.6f", best.Name, best.ID, dist)
	if kdBest, kdDist := kt.NearestNeighbor(lat, lon); kdDist != dist {
		log.Debug("k-d tree oracle disagrees: %s at %.6f", kdBest.Name, kdDist)
	}
}

func handleInsert(log *logger.Logger, rt *rtree.Tree, kt *kdtree.Tree, civs *[]civ.Civilization, fields []string) {
	if len(fields) != 6 {
		log.Warning("usage: insert <id> <name> <lat> <lon> <startYear>")
		return
	}
	id, err1 := strconv.Atoi(fields[1])
	lat, err2 := strconv.ParseFloat(fields[3], 64)
	lon, err3 := strconv.ParseFloat(fields[4], 64)
	year, err4 := strconv.Atoi(fields[5])
	if err1 != nil || err2 != nil || err3 != nil || err4 != nil {
		log.Warning("could not parse insert arguments")
		return
	}
	c := civ.Civilization{ID: id, Name: fields[2], Latitude: lat, Longitude: lon, StartYear: year}
	rt.Insert(c)
	kt.Insert(c)
	*civs = append(*civs, c)
	log.Info("inserted %s (id=%d)", c.Name, c.ID)
}

func handleDelete(log *logger.Logger, rt *rtree.Tree, civs *[]civ.Civilization, fields []string) {
	if len(fields) != 4 {
		log.Warning("usage: delete <id> <lat> <lon>")
		return
	}
	id, err1 := strconv.Atoi(fields[1])
	lat, err2 := strconv.ParseFloat(fields[2], 64)
	lon, err3 := strconv.ParseFloat(fields[3], 64)
	if err1 != nil || err2 != nil || err3 != nil {
		log.Warning("could not parse delete arguments")
		return
	}
	ok := rt.Remove(civ.Civilization{ID: id, Latitude: lat, Longitude: lon})
	if !ok {
		log.Warning("no civilization with id %d at (%f, %f)", id, lat, lon)
		return
	}
	for i, c := range *civs {
		if c.ID == id {
			*civs = append((*civs)[:i], (*civs)[i+1:]...)
			break
		}
	}
	log.Info("deleted id=%d", id)
}
