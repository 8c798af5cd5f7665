// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/saferwall/dwg"
)

func prettyPrint(iface interface{}) string {
	buff, err := json.Marshal(iface)
	if err != nil {
		return fmt.Sprintf("%v", iface)
	}
	var pretty bytes.Buffer
	if err := json.Indent(&pretty, buff, "", "\t"); err != nil {
		return string(buff)
	}
	return pretty.String()
}

func runHeader(cmd *cobra.Command, args []string) {
	doc, err := dwg.ReadFromFile(args[0], &dwg.Options{})
	if err != nil {
		log.Fatalf("failed to open %s: %v", args[0], err)
	}
	defer doc.Close()

	fmt.Println(prettyPrint(doc.Header.Vars))
	fmt.Println(prettyPrint(doc.Header.HandlePointers))
}

func runSections(cmd *cobra.Command, args []string) {
	doc, err := dwg.ReadFromFile(args[0], &dwg.Options{})
	if err != nil {
		log.Fatalf("failed to open %s: %v", args[0], err)
	}
	defer doc.Close()

	fmt.Println(prettyPrint(doc.Catalog.Sections))
}

func runSummary(cmd *cobra.Command, args []string) {
	doc, err := dwg.ReadFromFile(args[0], &dwg.Options{ReadSummaryInfo: true})
	if err != nil {
		log.Fatalf("failed to open %s: %v", args[0], err)
	}
	defer doc.Close()

	if doc.SummaryInfo == nil {
		fmt.Println("{}")
		return
	}
	fmt.Println(prettyPrint(doc.SummaryInfo))
}

func runNotifications(cmd *cobra.Command, args []string) {
	doc, err := dwg.ReadFromFile(args[0], &dwg.Options{})
	if err != nil {
		log.Fatalf("failed to open %s: %v", args[0], err)
	}
	defer doc.Close()

	fmt.Println(prettyPrint(doc.Notifications))
}

func main() {
	rootCmd := &cobra.Command{
		Use:   "dwgdump",
		Short: "A DWG drawing file parser",
		Long:  "A DWG-Parser built for drawing-format inspection and archaeology by Saferwall",
	}

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("You are using version 0.0.1")
		},
	}

	headerCmd := &cobra.Command{
		Use:   "header FILE",
		Short: "Dumps the HEADER section's variable and handle-pointer bags",
		Args:  cobra.ExactArgs(1),
		Run:   runHeader,
	}

	sectionsCmd := &cobra.Command{
		Use:   "sections FILE",
		Short: "Dumps the file header's section catalog",
		Args:  cobra.ExactArgs(1),
		Run:   runSections,
	}

	summaryCmd := &cobra.Command{
		Use:   "summary FILE",
		Short: "Dumps the SUMMARYINFO section (AC18+ only)",
		Args:  cobra.ExactArgs(1),
		Run:   runSummary,
	}

	notificationsCmd := &cobra.Command{
		Use:   "notifications FILE",
		Short: "Dumps every Notification recorded while reading the drawing",
		Args:  cobra.ExactArgs(1),
		Run:   runNotifications,
	}

	rootCmd.AddCommand(versionCmd, headerCmd, sectionsCmd, summaryCmd, notificationsCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
