package common

const Version = `v1.6.0`
