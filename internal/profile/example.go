// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package profile

// ExampleYAML is a YAML profile equivalent to the built-in one.
const ExampleYAML = `# mazerun launch profile
name: terminal
executable: java
# jvm_options are placed before the class path, e.g. ["-Xmx512m"].
jvm_options: []
class_path: app/build/classes/java/main
main_class: org.mazeApp.Launcher
# "terminal" starts the text front-end; an empty list starts the GUI.
args:
  - terminal
# working_dir: /path/to/maze
# env:
#   JAVA_TOOL_OPTIONS: -Dfile.encoding=UTF-8
`

// ExampleHCL is an HCL profile equivalent to the built-in one.
const ExampleHCL = `# mazerun launch profile
name        = "terminal"
executable  = "java"
jvm_options = []
class_path  = "app/build/classes/java/main"
main_class  = "org.mazeApp.Launcher"
args        = ["terminal"]
# working_dir = "/path/to/maze"
# Variables of this process are available as environ, e.g. environ.HOME.
# env = {
#   JAVA_TOOL_OPTIONS = "-Dfile.encoding=UTF-8"
# }
`
