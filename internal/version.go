package internal

// Version is the current sheetlate release
const Version = "0.4.1"
