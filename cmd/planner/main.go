// Command planner finds the best non-colliding timetables for a group
// of people sharing courses and shows how to realize them in USOS.
package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"usosplanner/internal/evaluate"
	"usosplanner/internal/planner"
	"usosplanner/internal/timetable"
	"usosplanner/internal/usos"
)

var (
	configDir string
	dataDir   string
	person    string
	rankTop   int
	keep      int
	strict    bool
	treeOut   string
	treeIn    string
	planTop   int
	power     float64
)

func main() {
	log.SetFlags(log.Ltime)

	rootCmd := &cobra.Command{
		Use:   "planner",
		Short: "USOS group timetable planner",
		Long: "A tool that enumerates collision-free timetables for several people,\n" +
			"scores them, and finds the best joint assignment of shared course groups.",
	}
	rootCmd.PersistentFlags().StringVar(&configDir, "config", "./config", "config directory (cycle file + one subdirectory per person)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", "./data", "data directory (course CSV files + terms.json)")

	rankCmd := &cobra.Command{
		Use:   "rank",
		Short: "rank one person's timetables",
		Run:   commandRank,
	}
	rankCmd.Flags().StringVar(&person, "person", "", "person's config directory name")
	rankCmd.Flags().IntVar(&rankTop, "top", 3, "number of timetables to print")

	treeCmd := &cobra.Command{
		Use:   "tree",
		Short: "build the shared-group strategy tree and save it",
		Run:   commandTree,
	}
	treeCmd.Flags().IntVar(&keep, "keep", 0, "timetables kept per person per branch (0 keeps all)")
	treeCmd.Flags().BoolVar(&strict, "strict", false, "scan every candidate group instead of stopping at the first infeasible one")
	treeCmd.Flags().StringVar(&treeOut, "out", "strategy_tree.json", "output file for the strategy tree")

	planCmd := &cobra.Command{
		Use:   "plan",
		Short: "find and display the best joint assignments",
		Run:   commandPlan,
	}
	planCmd.Flags().IntVar(&keep, "keep", 0, "timetables kept per person per branch (0 keeps all)")
	planCmd.Flags().BoolVar(&strict, "strict", false, "scan every candidate group instead of stopping at the first infeasible one")
	planCmd.Flags().StringVar(&treeIn, "in", "", "read a previously saved strategy tree instead of rebuilding it")
	planCmd.Flags().IntVar(&planTop, "top", 1, "number of joint assignments to keep")
	planCmd.Flags().Float64Var(&power, "power", 10, "power applied to the summed per-person scores")

	rootCmd.AddCommand(rankCmd, treeCmd, planCmd)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func commandRank(cmd *cobra.Command, args []string) {
	if person == "" {
		log.Fatalf("--person is required")
	}
	units := buildUnits()
	for _, unit := range units {
		if unit.Name != person {
			continue
		}
		top := unit.Top(rankTop)
		if len(top) == 0 {
			log.Printf("no possible timetable for %v", unit.Name)
			os.Exit(1)
		}
		for i, ranked := range top {
			fmt.Printf("=== timetable %d for %v (score %.3f) ===\n", i+1, unit.Name, ranked.Score)
			printTimetable(ranked.Timetable)
		}
		return
	}
	log.Fatalf("unknown person: %q", person)
}

func commandTree(cmd *cobra.Command, args []string) {
	units := buildUnits()
	edges := planner.SharedEdges(units)
	log.Printf("shared-group graph has %d edges", len(edges))

	tree, err := planner.BuildStrategyTree(keep, edges, units, strict)
	if err != nil {
		log.Fatalf("cannot build strategy tree: %v", err)
	}
	if err := planner.SaveTree(treeOut, tree); err != nil {
		log.Fatalf("%v", err)
	}
	log.Printf("saved strategy tree to %v", treeOut)
}

func commandPlan(cmd *cobra.Command, args []string) {
	runID := strings.ToUpper(uuid.NewString()[:6])
	log.Printf("starting run: %v", runID)

	units := buildUnits()

	var tree *planner.Node
	var err error
	if treeIn != "" {
		if tree, err = planner.LoadTree(treeIn); err != nil {
			log.Fatalf("%v", err)
		}
	} else {
		edges := planner.SharedEdges(units)
		if tree, err = planner.BuildStrategyTree(keep, edges, units, strict); err != nil {
			log.Fatalf("cannot build strategy tree: %v", err)
		}
	}

	aggregate, err := planner.NewAggregators().Get("power", power)
	if err != nil {
		log.Fatalf("%v", err)
	}

	results, err := planner.TopStrategies(planTop, aggregate, tree, units)
	if err != nil {
		log.Printf("%v", err)
		os.Exit(1)
	}

	writer := usos.NewDryRunWriter()
	if usos.Session() == "" {
		log.Printf("anonymous session: timetables will not be created in the portal")
	}

	for _, score := range results.Scores() {
		fmt.Printf("score: %v\n", score)
		for _, assignment := range results.Buckets()[score] {
			selections, err := planner.Materialization(assignment, units)
			if err != nil {
				log.Fatalf("%v", err)
			}
			for unitID, unit := range units {
				ranked := unit.RankedTimetables[assignment[unitID][0]]
				fmt.Printf("--- best timetable for %v (id %d, score %.3f) ---\n",
					unit.Name, assignment[unitID][0], ranked.Score)
				printTimetable(ranked.Timetable)

				handle, err := writer.Create("automatic_" + unit.Name + "_" + runID)
				if err != nil {
					log.Fatalf("cannot create timetable: %v", err)
				}
				if err := writer.Materialize(handle, selections[unit.Name]); err != nil {
					log.Fatalf("cannot materialize timetable: %v", err)
				}
			}
		}
	}
}

// buildUnits loads the cycle and per-person configs, fetches course
// groups through the cached file provider and ranks every person's
// timetables. Any configuration problem aborts before planning starts.
func buildUnits() []*planner.Unit {
	cycle, err := usos.ReadCycle(configDir)
	if err != nil {
		log.Fatalf("%v", err)
	}

	cache, err := usos.NewFileCache(filepath.Join(dataDir, "cache"))
	if err != nil {
		log.Fatalf("%v", err)
	}
	provider := usos.NewCachedProvider(usos.NewFileProvider(dataDir), cache)

	resolver, err := usos.NewFileTermResolver(filepath.Join(dataDir, "terms.json"))
	if err != nil {
		log.Fatalf("%v", err)
	}

	registry := evaluate.NewRegistry()

	personalDirs, err := usos.PersonalConfigDirs(configDir)
	if err != nil {
		log.Fatalf("%v", err)
	}
	if len(personalDirs) == 0 {
		log.Fatalf("no personal config directories in %v", configDir)
	}

	courseTerms := make(map[string]string)
	var units []*planner.Unit
	for _, dir := range personalDirs {
		config, err := usos.LoadPersonalConfig(dir)
		if err != nil {
			log.Fatalf("%v", err)
		}
		if !registry.Has(config.Evaluator) {
			log.Fatalf("personal config in %v names unknown evaluator %q", dir, config.Evaluator)
		}

		groups := make(timetable.CourseUnits, len(config.Courses))
		for _, course := range config.Courses {
			term, ok := courseTerms[course]
			if !ok {
				if term, err = resolver.ResolveTerm(course, cycle); err != nil {
					log.Fatalf("%v", err)
				}
				courseTerms[course] = term
			}
			if groups[course], err = provider.FetchCourseGroups(course, term); err != nil {
				log.Fatalf("%v", err)
			}
		}

		unit, err := planner.NewUnit(
			filepath.Base(dir), config.Courses, config.Evaluator, groups,
			registry, evaluate.NewContext(dir),
		)
		if err != nil {
			log.Fatalf("%v", err)
		}
		log.Printf("%v: %d possible timetables found", unit.Name, len(unit.RankedTimetables))
		units = append(units, unit)
	}
	return units
}

func printTimetable(tt timetable.Timetable) {
	for _, group := range tt {
		fmt.Println(group)
	}
}
