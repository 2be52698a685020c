package task

// Fixtures returns the tasks a fresh session starts with.
func Fixtures() []Task {
	return []Task{
		{ID: 1, Title: "Finish the monthly report", Description: "Wrap up the January performance report", Priority: PriorityHigh, DueDate: "2024-01-15", Category: "Work", CreatedAt: "2024-01-10"},
		{ID: 2, Title: "Call the dentist", Description: "Book the yearly check-up", Priority: PriorityMedium, DueDate: "2024-01-14", Category: "Personal", CreatedAt: "2024-01-09"},
		{ID: 3, Title: "Buy groceries", Description: "Milk, bread, fruit and vegetables for the week", Completed: true, Priority: PriorityLow, DueDate: "2024-01-13", Category: "Home", CreatedAt: "2024-01-12"},
		{ID: 4, Title: "Prepare the presentation", Description: "Slides for Friday's client meeting", Priority: PriorityHigh, DueDate: "2024-01-16", Category: "Work", CreatedAt: "2024-01-08"},
		{ID: 5, Title: "Go for a run", Description: "30 minute running session", Priority: PriorityMedium, DueDate: "2024-01-17", Category: "Health", CreatedAt: "2024-01-11"},
		{ID: 6, Title: "Study for the exam", Description: "Chapters 5 to 8 of the maths textbook", Priority: PriorityHigh, DueDate: "2024-01-20", Category: "Studies", CreatedAt: "2024-01-07"},
		{ID: 7, Title: "Clean the car", Description: "Full wash inside and out", Completed: true, Priority: PriorityLow, DueDate: "2024-01-12", Category: "Home", CreatedAt: "2024-01-10"},
		{ID: 8, Title: "Plan the birthday party", Description: "Book the restaurant and invite friends", Priority: PriorityMedium, DueDate: "2024-01-25", Category: "Personal", CreatedAt: "2024-01-06"},
	}
}
