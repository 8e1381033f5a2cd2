package main

type sessionKey string

const personIDSessionKey = sessionKey("personID")
