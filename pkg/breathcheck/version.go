package breathcheck

const Version = "0.1.0"
