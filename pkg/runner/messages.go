package runner

// User-facing text of the interactive prompt.
const (
	Welcome = "Welcome to the Tetrator Calculator!"
	Bye     = "Goodbye!"

	OptionSelect = "Select an option:"
	StartCompute = "Perform Tetration"
	Exit         = "Exit"

	EnterBase   = "Please enter the base (a non-negative integer):"
	EnterHeight = "Please enter the height (a non-negative integer):"

	InvalidSelection     = "Invalid selection. Please choose a valid option:"
	InvalidBaseInput     = "Invalid base input:"
	InvalidHeightInput   = "Invalid height input:"
	InvalidBaseAndHeight = "Invalid base and height inputs:"

	InvalidBaseMessage     = "Invalid input for the base. Please enter a positive integer."
	InvalidHeightMessage   = "Invalid input for the height. Please enter a positive integer."
	InvalidInputUnreadable = "Failed to read input from the user."
)
