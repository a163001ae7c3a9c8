/*
Package runner implements the interactive prompt for tetrator.

It is a read-evaluate-print loop over a two-item menu (compute, exit). Each compute
round asks for a base and a height, validates both, and hands the pair to a Computer
(normally *tetrator.Service).

# Key Components

  - Session: the menu loop and per-field validation.
  - TextHandler: line-based terminal I/O with optional markdown rendering.
  - ParseOperand / CleanInput: input validation shared with other front ends.

# Usage

	session := runner.NewSession(svc, runner.NewTextHandler(os.Stdin, os.Stdout))
	if err := session.Run(ctx); err != nil {
		log.Fatal(err)
	}
*/
package runner
